//go:build !(js && wasm)

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/zbanalyzer/zbparse/config"
	"github.com/zbanalyzer/zbparse/utils"
)

func usage() {
	fmt.Println("Usage: zbparse [-config file.yaml] [-debug] <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  parse dump.bin report.json|report.zbr     (scan a memory dump and write the report)")
	fmt.Println("  paths report|dump paths.json              (graph analysis and root-to-leaf paths per scene)")
	fmt.Println("  layout [text|json|yaml]                   (print the record layouts)")
	fmt.Println("  hitbox2glb report|dump output.glb         (export hitboxes as a .glb, one node per scene)")
	fmt.Println("  pack report.json|dump output.zbr          (store a report as a compressed container)")
	fmt.Println("  unpack input.zbr report.json              (verify a container and write its JSON)")
	fmt.Println("  watch dump.bin report.json|report.zbr     (re-parse whenever the dump changes)")
	fmt.Println("  gensynth <scenes> <seed> output.bin       (write a synthetic dump, seed 0 = random)")
}

func setupLogging(debug bool) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if debug {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	debug := flag.Bool("debug", false, "log scan details to stderr")
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	setupLogging(cfg.Debug || *debug)

	switch args[0] {
	case "parse":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunParse(args[1], args[2], cfg); err != nil {
			fail(err)
		}
	case "paths":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunPaths(args[1], args[2], cfg); err != nil {
			fail(err)
		}
	case "layout":
		format := ""
		if len(args) > 1 {
			format = args[1]
		}
		if err := utils.RunLayout(os.Stdout, format); err != nil {
			fail(err)
		}
		return
	case "hitbox2glb":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunHitbox2GLB(args[1], args[2], cfg); err != nil {
			fail(err)
		}
	case "pack":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunPack(args[1], args[2], cfg); err != nil {
			fail(err)
		}
	case "unpack":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunUnpack(args[1], args[2]); err != nil {
			fail(err)
		}
	case "watch":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		stop := make(chan struct{})
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		go func() {
			<-sig
			close(stop)
		}()
		if err := utils.RunWatch(args[1], args[2], cfg, stop); err != nil {
			fail(err)
		}
	case "gensynth":
		if len(args) != 4 {
			usage()
			os.Exit(1)
		}
		var scenes int
		var seed int64
		if _, err := fmt.Sscan(args[1], &scenes); err != nil {
			fail(err)
		}
		if _, err := fmt.Sscan(args[2], &seed); err != nil {
			fail(err)
		}
		if err := utils.RunGenerateSynthetic(scenes, seed, args[3], cfg); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
