// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nixtm/nix-timemach/internal/cacheutil"
	"github.com/nixtm/nix-timemach/internal/command"
	"github.com/nixtm/nix-timemach/internal/config"
	"github.com/nixtm/nix-timemach/internal/log"
	"github.com/nixtm/nix-timemach/internal/nixerr"
	"github.com/nixtm/nix-timemach/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processSetOnly expands an @set argument into the string slice stored at
// <namespace>.<set> in the config file. A bare @ expands the "defaults" set.
func processSetOnly(args []string) []string {
	if len(args) < 2 || args[1] == "completion" {
		return args
	}

	removeIdx := -1
	set := ""
	for i, a := range args[2:] {
		if a == "--" {
			break
		}
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = 2 + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}
	if set == "" {
		set = "defaults"
	}

	expanded := append([]string{}, args[:removeIdx]...)
	setArgs, err := config.GetStringSlice(command.Namespace(args) + "." + set)
	if err != nil {
		log.Warnf("ignoring @%s: %v", set, err)
	}
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}
	expanded = append(expanded, args[removeIdx+1:]...)

	log.Debugf("args after set processing: args=%v", expanded)
	return expanded
}

// purgeCache drops cache entries older than the cache.clean setting, in
// hours. Zero or unset keeps everything.
func purgeCache() {
	hours, err := config.GetInt("cache.clean", 0)
	if err != nil || hours <= 0 {
		return
	}
	if err := cacheutil.Purge(hours); err != nil {
		log.Debugf("cache purge err: err=%v", err)
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, _, err := cacheutil.EnsureBaseDir(); err != nil {
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	purgeCache()

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, nixerr.Friendly(err))
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)
	args = processSetOnly(args)

	return initAndRunApp(args)
}
