package controllers

import (
	"paridade/cache"
	"paridade/config"
	"paridade/permissions"
	"paridade/store"
	"paridade/workers"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// Env carrega as dependências de processo dos handlers: stores, cache, gate de
// permissões e o recorder de views. Montado uma vez no main e injetado no
// contexto do gin — nada de singleton ambiente.
type Env struct {
	DB            *gorm.DB
	Cache         *cache.Cache
	Products      *store.ProductStore
	Subscriptions *store.SubscriptionStore
	Views         *store.ViewStore
	Users         *store.UserStore
	Perms         *permissions.Service
	Recorder      *workers.ViewRecorder
	Config        config.Configuration
}

// NewEnv monta o grafo de dependências em cima de um db + cache.
func NewEnv(db *gorm.DB, c *cache.Cache, conf config.Configuration) *Env {
	products := store.NewProductStore(db, c)
	subscriptions := store.NewSubscriptionStore(db, c)
	views := store.NewViewStore(db, c)

	return &Env{
		DB:            db,
		Cache:         c,
		Products:      products,
		Subscriptions: subscriptions,
		Views:         views,
		Users:         store.NewUserStore(db, c),
		Perms:         permissions.NewService(subscriptions, views, products),
		Config:        conf,
	}
}

const envKey = "env"

// Use este middleware no setup do gin
func SetEnvToContext(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(envKey, env)
		c.Next()
	}
}

func EnvInstance(c *gin.Context) *Env {
	v, ok := c.Get(envKey)
	if !ok {
		return nil
	}
	env, _ := v.(*Env)
	return env
}
