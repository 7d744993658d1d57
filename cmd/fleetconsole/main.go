package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"fleetconsole/api"
	"fleetconsole/config"
	"fleetconsole/console"
	"fleetconsole/messaging"
	"fleetconsole/recents"
	"fleetconsole/store"
	"fleetconsole/www"
)

var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "fleetconsole.yaml", "path to config file")
	flag.Parse()

	if *showVersion {
		fmt.Println("fleetconsole", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := store.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	log.Printf("fleetconsole: database open (%s)", cfg.Database.Driver)

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	redisUp := redisClient.Ping(ctx).Err() == nil
	cancel()
	defer redisClient.Close()

	// Recents tracker: redis mirror is optional
	var recentsStore *recents.RedisStore
	if redisUp {
		log.Printf("fleetconsole: redis connected (%s)", cfg.Redis.Address)
		recentsStore = recents.NewRedisStore(redisClient)
	} else {
		log.Printf("fleetconsole: redis not available, recents served from SQL")
	}
	recentsMgr := recents.NewManager(db, recentsStore)
	if redisUp {
		if err := recentsMgr.SyncRedisFromSQL(); err != nil {
			log.Printf("fleetconsole: recents mirror sync: %v", err)
		}
	}

	// Backend API client
	backend := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	if err := backend.Ping(); err == nil {
		log.Printf("fleetconsole: backend connected (%s)", backend.BaseURL())
	} else {
		log.Printf("fleetconsole: backend not available (%v)", err)
	}

	// Audit export
	msgClient := messaging.NewClient(&cfg.Messaging)
	if err := msgClient.Connect(); err != nil {
		log.Printf("fleetconsole: messaging connect failed (%v)", err)
	} else {
		log.Printf("fleetconsole: messaging connected (kafka)")
	}
	defer msgClient.Close()

	// Console hub
	c := console.New(console.Config{
		AppConfig:  cfg,
		ConfigPath: *configPath,
		DB:         db,
		Backend:    backend,
		Recents:    recentsMgr,
		MsgClient:  msgClient,
	})
	c.Start()
	defer c.Stop()

	// Outbox drainer (audit export)
	drainer := messaging.NewOutboxDrainer(db, msgClient, cfg.Messaging.OutboxDrainInterval)
	drainer.Start()
	defer drainer.Stop()

	// Web server
	handler, stopWeb := www.NewRouter(c)

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		log.Printf("fleetconsole: web server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("web server: %v", err)
		}
	}()

	log.Printf("fleetconsole: ready")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Printf("fleetconsole: shutting down...")
	stopWeb()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)

	log.Printf("fleetconsole: stopped")
}
