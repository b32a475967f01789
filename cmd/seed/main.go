package main

import (
	"context"
	"flag"
	"log"
	"time"

	"equiptrack/internal/config"
	"equiptrack/internal/database"
	"equiptrack/internal/domain"
	"equiptrack/internal/modules/equipment"
	"equiptrack/internal/repository"
)

type seedItem struct {
	name   string
	renter string
	rate   string
	// days ago the item was checked in
	age int
	// checked out this many days after check-in; negative keeps it checked in
	keptFor int
}

var demo = []seedItem{
	{name: "Cordless Drill", renter: "+15550100", rate: "12.5", age: 3, keptFor: -1},
	{name: "Circular Saw", renter: "+15550101", rate: "15.5", age: 5, keptFor: 2},
	{name: "Pressure Washer", renter: "", rate: "30", age: 1, keptFor: -1},
	{name: "Tile Cutter", renter: "+15550102", rate: "22", age: 10, keptFor: 7},
	{name: "Ladder 6m", renter: "+15550103", rate: "8", age: 0, keptFor: -1},
}

func main() {
	reset := flag.Bool("reset", false, "delete existing log rows first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if *reset {
		log.Println("Cleaning old data...")
		if err := db.Exec("DELETE FROM " + repository.EquipmentTable).Error; err != nil {
			log.Fatal("cleanup failed:", err)
		}
	}

	store := repository.NewEquipmentRepository(db)
	ctx := context.Background()
	today := time.Now().In(cfg.Location)

	for _, item := range demo {
		checkedIn := today.AddDate(0, 0, -item.age)
		svc := equipment.NewService(store,
			equipment.WithLocation(cfg.Location),
			equipment.WithClock(func() time.Time { return checkedIn }))

		rec, err := svc.CheckIn(ctx, equipment.CheckInRequest{
			EquipmentName: item.name,
			RenterNumber:  item.renter,
			Rate:          equipment.RawValue(item.rate),
		})
		if err != nil {
			log.Fatalf("seed %q: %v", item.name, err)
		}

		if item.keptFor >= 0 {
			returned := checkedIn.AddDate(0, 0, item.keptFor)
			out := equipment.NewService(store,
				equipment.WithLocation(cfg.Location),
				equipment.WithClock(func() time.Time { return returned }))
			if _, err := out.CheckOut(ctx, domain.FormatID(rec.ID)); err != nil {
				log.Fatalf("seed check-out %q: %v", item.name, err)
			}
		}
	}

	log.Printf("seeded %d equipment records", len(demo))
}
