// internal/middleware/crawler.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Social crawlers fetch a creator's bare-username URL to unfurl a preview.
// Those requests get rewritten to the Open Graph image endpoint instead of
// whatever would normally serve the page; everything else passes through.

// botSignatures is the fixed list of known crawler user-agent fragments,
// matched case-insensitively.
var botSignatures = []string{
	"facebookexternalhit",
	"facebookcatalog",
	"twitterbot",
	"whatsapp",
	"linkedinbot",
	"telegrambot",
	"slackbot",
	"discordbot",
	"pinterest",
	"googlebot",
	"bingbot",
	"embedly",
	"quora link preview",
	"redditbot",
	"applebot",
}

// reservedPrefixes are first path segments that can never be usernames.
var reservedPrefixes = map[string]bool{
	"api":         true,
	"v1":          true,
	"health":      true,
	"dashboard":   true,
	"sign-in":     true,
	"sign-up":     true,
	"og":          true,
	"u":           true,
	"uploads":     true,
	"assets":      true,
	"favicon.ico": true,
}

// IsBotUserAgent reports whether the user-agent matches a known crawler
// signature.
func IsBotUserAgent(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, sig := range botSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}

// RewriteTarget decides whether a request should be rewritten to the OG image
// endpoint. The path must be a bare username segment: exactly one segment, no
// dot (file requests keep their extension) and not a reserved prefix. The
// predicate holds no state.
func RewriteTarget(path, userAgent string) (string, bool) {
	if !IsBotUserAgent(userAgent) {
		return "", false
	}

	trimmed := strings.Trim(path, "/")
	if trimmed == "" || strings.Contains(trimmed, "/") || strings.Contains(trimmed, ".") {
		return "", false
	}
	if reservedPrefixes[strings.ToLower(trimmed)] {
		return "", false
	}

	return "/og/" + trimmed, true
}

// CrawlerRewrite rewrites matching bot requests onto the engine's OG image
// route and re-dispatches them.
func CrawlerRewrite(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, ok := RewriteTarget(c.Request.URL.Path, c.Request.UserAgent())
		if !ok {
			c.Next()
			return
		}

		logrus.WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"target":     target,
			"user_agent": c.Request.UserAgent(),
		}).Info("Rewriting crawler request")

		c.Request.URL.Path = target
		engine.HandleContext(c)
		c.Abort()
	}
}
