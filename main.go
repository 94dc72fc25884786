package main

import (
	"fmt"
	"log"
	"time"

	"backend/configs"
	"backend/routes"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemoUsers(); err != nil {
			log.Fatalf("seed demo users failed: %v", err)
		}
	}

	// Realtime feed
	feed := ws.NewFeedHub()
	go feed.Run()

	// HTTP
	r := gin.Default()
	donationSvc := routes.RegisterRoutes(r, feed)

	// กวาด donation ที่หมดอายุทุก ๆ 1 นาที
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := donationSvc.ExpireDue(time.Now()); err != nil {
				log.Printf("expiry sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("expired %d donations", n)
			}
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("listening on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
