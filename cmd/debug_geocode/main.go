package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"puzzled-pint-map/core/config"
	"puzzled-pint-map/core/geocode"
	"puzzled-pint-map/feature/cache"

	"go.uber.org/zap"
)

// Looks an address up the way the locations pipeline does, without touching
// the registry or storing anything in the cache.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_geocode <address>")
	}
	address := strings.Join(os.Args[1:], " ")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	l := zap.NewNop()

	addresses, err := cache.Open(ctx, cfg.Cache, cfg.Database, l)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Cache ===")
	if loc, ok := addresses.Lookup(address); ok {
		printLocation(loc)
	} else {
		fmt.Println("not cached")
	}

	gateway, err := geocode.NewGoogleGateway(cfg.Geocode, l)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Provider ===")
	loc, err := gateway.Geocode(ctx, address)
	if err != nil {
		log.Fatal(err)
	}
	printLocation(*loc)
	fmt.Printf("successful_geocode: %v\n", loc.Successful())
}

func printLocation(loc geocode.Location) {
	out, _ := json.MarshalIndent(loc, "", "  ")
	fmt.Println(string(out))
}
