package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"equiptrack/internal/config"
	jwtsvc "equiptrack/internal/pkg/jwt"
)

func main() {
	operator := flag.String("operator", "", "operator name embedded in the token")
	flag.Parse()

	if *operator == "" {
		fmt.Fprintln(os.Stderr, "usage: token -operator NAME")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	token, err := jwtsvc.New(cfg.OperatorTokenSecret, cfg.OperatorTokenTTL).GenerateToken(*operator)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
