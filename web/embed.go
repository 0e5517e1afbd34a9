// Package web holds the static admin console served by the proxy.
package web

import "embed"

// Root is the directory inside Assets that maps to "/".
const Root = "public"

//go:embed public
var Assets embed.FS
