package main

import (
	"log"
	"os"

	"paridade/cache"
	"paridade/config"
	"paridade/controllers"
	dbpkg "paridade/db"
	"paridade/router"
	"paridade/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := getenv("CONFIG_PATH", "config/config.json")
	conf := config.Get(configPath)

	database, err := dbpkg.Connect(conf)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer database.Close()

	// cache de tags: instância de processo, criada aqui e injetada em quem usa
	tagCache := cache.New()

	if err := dbpkg.SeedCountryGroups(database, tagCache); err != nil {
		log.Fatalf("seed: %v", err)
	}

	env := controllers.NewEnv(database, tagCache, conf)

	// gravação de views fora do caminho de resposta do banner
	env.Recorder = workers.StartViewRecorder(env.Views)
	defer env.Recorder.Stop()

	r := gin.New()
	router.Initialize(r, env)

	log.Printf("Paridade listening on :%s", conf.ApiPort)
	if err := r.Run(":" + conf.ApiPort); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
