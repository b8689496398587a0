package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	endpoint      string
	dsn           string
	queueFile     string
	probeInterval time.Duration
	logLevel      string
	env           string
	authSecretKey string
}

func generateRandomString(length int) string {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

func NewConfig() Config {
	var (
		endpoint      string
		dsn           string
		queueFile     string
		probeSeconds  int
		logLevel      string
		env           string
		authSecretKey string
	)

	flag.StringVar(&endpoint, "a", "localhost:8090", "address and port to run terminal server")
	flag.StringVar(&dsn, "d", "", "data source name for remote database connection")
	flag.StringVar(&queueFile, "q", "pending_orders.json", "path to the local pending orders queue file")
	flag.IntVar(&probeSeconds, "p", 15, "connectivity probe interval in seconds")
	flag.Parse()

	if address := os.Getenv("RUN_ADDRESS"); address != "" {
		endpoint = address
	}

	if d := os.Getenv("DATABASE_URI"); d != "" {
		dsn = d
	}

	if q := os.Getenv("QUEUE_FILE"); q != "" {
		queueFile = q
	}

	if p := os.Getenv("PROBE_INTERVAL"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			probeSeconds = parsed
		}
	}

	if l := os.Getenv("LOG_LEVEL"); l != "" {
		logLevel = l
	} else {
		logLevel = "error"
	}

	if e := os.Getenv("ENV"); e != "" {
		env = e
	} else {
		env = "production"
	}

	if secret := os.Getenv("AUTH_SECRET_KEY"); secret != "" {
		authSecretKey = secret
	} else {
		if env == "production" {
			authSecretKey = generateRandomString(10)
			log.Printf("WARNING: AUTH_SECRET_KEY has to be defined for production environment\n")
		} else {
			authSecretKey = "development-key"
		}
	}

	return Config{
		endpoint,
		dsn,
		queueFile,
		time.Duration(probeSeconds) * time.Second,
		logLevel,
		env,
		authSecretKey,
	}
}
