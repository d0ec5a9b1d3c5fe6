package handlers

import (
	"net/http"

	"fitcoach_backend/config"
	"fitcoach_backend/sw"

	"github.com/gin-gonic/gin"
)

// shellRoutes is the fixed app shell the service worker pre-caches on
// install.
var shellRoutes = []string{
	"/",
	"/login",
	"/member/dashboard",
	"/member/packages",
	"/member/report",
	"/blog",
	"/offline",
}

type SWHandler struct {
	cfg *config.Config
}

func NewSWHandler(cfg *config.Config) *SWHandler {
	return &SWHandler{cfg: cfg}
}

// GetConfig hands the browser worker its cache generation and route lists.
// Bumping CACHE_VERSION_TAG retires every older cache on the next
// activation.
func (h *SWHandler) GetConfig(c *gin.Context) {
	workerCfg := sw.Config{
		CacheName:       h.cfg.CacheVersionTag,
		ShellRoutes:     shellRoutes,
		BypassFragments: []string{"/api/", "/jobs/", "/internal/"},
	}

	c.JSON(http.StatusOK, gin.H{
		"cache_name":       workerCfg.CacheName,
		"shell_routes":     workerCfg.ShellRoutes,
		"bypass_fragments": workerCfg.BypassFragments,
	})
}
