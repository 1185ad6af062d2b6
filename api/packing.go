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
	"net/http"
	"strconv"

	model2 "github.com/kitpack/kitpack/api/model"

	"github.com/gin-gonic/gin"
)

func lineIndexParam(c *gin.Context) (int, bool) {
	raw, passed := c.Params.Get("index")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index is required. pass the line item index in the route /:index"})
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a number"})
		return 0, false
	}
	return index, true
}

func (a Api) BeginUnit(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}
	index, ok := lineIndexParam(c)
	if !ok {
		return
	}

	resp, err := a.kitpack.BeginUnit(c.Request.Context(), id, index)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) CommitUnit(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}
	index, ok := lineIndexParam(c)
	if !ok {
		return
	}

	var body model2.CommitUnit
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
			return
		}
	}

	resp, err := a.kitpack.CommitUnit(c.Request.Context(), id, index, body.Checklist)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) InvokeUndo(c *gin.Context) {
	resp, err := a.kitpack.InvokeUndo(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetPendingUndo(c *gin.Context) {
	pending := a.kitpack.PendingUndo()
	if pending == nil {
		c.JSON(http.StatusOK, gin.H{"pending": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": true, "compensation": pending})
}
