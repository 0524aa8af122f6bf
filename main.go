package main

import (
	"context"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	config, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(config.Level())

	var store ScoreStore
	if config.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		redisStore, err := NewRedisStore(ctx, RedisConfig{
			RedisURL: config.RedisURL,
			Prefix:   config.RedisKeyPrefix,
		})
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		store = redisStore
	} else {
		store = NewFileStore(config.StoragePath)
		log.WithField("path", config.StoragePath).Info("Using file storage.")
	}

	server := &http.Server{
		Handler:      Router(&API{Store: store}, config.StaticDir),
		Addr:         config.Addr(),
		WriteTimeout: 1 * time.Minute,
		ReadTimeout:  1 * time.Minute,
	}

	log.WithField("addr", server.Addr).Info("Listening.")
	log.Fatal(server.ListenAndServe())
}
