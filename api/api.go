/*
Copyright 2025 Kitpack Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package api

import (
	"github.com/kitpack/kitpack/config"

	"github.com/kitpack/kitpack/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/kitpack/kitpack"
)

type Api struct {
	kitpack *kitpack.Kitpack
	router  *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router

	router.POST("/orders", a.CreateOrder)
	router.GET("/orders", a.GetAllOrders)
	router.GET("/orders/:id", a.GetOrder)
	router.GET("/orders/queue/pending", a.GetPackingQueue)
	router.GET("/orders/:id/progress", a.GetOrderProgress)

	router.POST("/orders/:id/pack/:index", a.BeginUnit)
	router.POST("/orders/:id/pack/:index/commit", a.CommitUnit)
	router.POST("/undo", a.InvokeUndo)
	router.GET("/undo", a.GetPendingUndo)

	router.POST("/components", a.CreateComponent)
	router.GET("/components", a.GetAllComponents)
	router.GET("/components/low-stock", a.GetLowStockComponents)
	router.GET("/components/:id", a.GetComponent)
	router.POST("/components/:id/adjust-stock", a.AdjustStock)

	router.GET("/products/:id/kit", a.GetKit)
	router.POST("/products/:id/kit", a.AddKitComponent)
	router.PUT("/kit/:id", a.UpdateKitComponent)
	router.DELETE("/kit/:id", a.RemoveKitComponent)

	return a.router
}

func NewAPI(k *kitpack.Kitpack) (*Api, error) {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	r := gin.Default()
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}
	r.Use(middleware.RateLimitMiddleware(conf))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{kitpack: k, router: r}, nil
}
