package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

const version = "1.0.0"

type config struct {
	port int
	env  string
	db   struct {
		usersFile string
		tasksFile string
	}
	rulesFile string
	limiter   struct {
		enabled             bool
		maxRequestPerSecond float64
		burst               int
	}
}

type application struct {
	config config
	rules  *rules
	auth   *authenticator
	tasks  *taskRepository
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	var cfg config
	flag.IntVar(&cfg.port, "port", 8000, "Server Port")
	flag.StringVar(&cfg.env, "env", "development", "Environment [development|production]")

	flag.StringVar(&cfg.db.usersFile, "users-file", envOr("USERS_FILE", "database/users.json"), "Path to the users JSON file")
	flag.StringVar(&cfg.db.tasksFile, "tasks-file", envOr("TASKS_FILE", "database/tasks.json"), "Path to the tasks JSON file")
	flag.StringVar(&cfg.rulesFile, "rules", os.Getenv("RULES_FILE"), "Optional YAML rules file")

	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", false, "Enable per-IP rate limiting")
	flag.Float64Var(&cfg.limiter.maxRequestPerSecond, "limiter-rps", 10, "Rate limiter max requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 20, "Rate limiter burst size")
	flag.Parse()

	r, err := loadRules(cfg.rulesFile)
	if err != nil {
		log.Fatal(err)
	}

	users := newRecordStore(cfg.db.usersFile)
	tasks := newRecordStore(cfg.db.tasksFile)
	// A missing store file is a warning at boot and an error per request.
	for _, store := range []*recordStore{users, tasks} {
		if _, err := store.load(); err != nil && errors.Is(err, errStoreNotFound) {
			log.Printf("database file not found: %s", store.path)
		}
	}

	app := &application{
		config: cfg,
		rules:  r,
		auth:   newAuthenticator(users, r.BearerPrefix),
		tasks:  newTaskRepository(tasks, r),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.port),
		Handler:      composeRoutes(app),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.Printf("Starting %s server on port %d\n", cfg.env, cfg.port)
	err = srv.ListenAndServe()
	log.Fatal(err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
