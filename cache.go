// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Rendered help is only invalidated by a resize, so keep it a while.
	renderCacheExpiration = 30 * time.Minute
	renderCacheCleanup    = 5 * time.Minute
)

// NewRenderCache creates a cache for rendered markdown pages.
func NewRenderCache() *cache.Cache {
	return cache.New(renderCacheExpiration, renderCacheCleanup)
}

func renderCacheKey(page string, width int) string {
	return page + "@" + strconv.Itoa(width)
}

func CacheRenderedPage(c *cache.Cache, page string, width int, rendered string) {
	c.Set(renderCacheKey(page, width), rendered, renderCacheExpiration)
}

// GetRenderedPage returns "" when the page was not rendered at this width.
func GetRenderedPage(c *cache.Cache, page string, width int) string {
	val, ok := c.Get(renderCacheKey(page, width))
	if !ok {
		return ""
	}
	return val.(string)
}

// GetOrRender returns the cached rendering of page at width, calling render
// on a miss. Failed renders are not cached.
func GetOrRender(c *cache.Cache, page string, width int, render func() (string, error)) (string, error) {
	if cached := GetRenderedPage(c, page, width); cached != "" {
		return cached, nil
	}
	rendered, err := render()
	if err != nil {
		return "", err
	}
	CacheRenderedPage(c, page, width, rendered)
	return rendered, nil
}
