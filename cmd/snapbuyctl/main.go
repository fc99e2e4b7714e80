package main

import (
	"flag"
	"fmt"
	"os"

	"snapbuy/internal/ipc"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: snapbuyctl <command>

Commands:
  start     start the automation loop
  stop      stop the automation loop
  status    print current state and balance
  windows   list visible window titles
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}

	client := ipc.NewClient()

	var err error
	switch flag.Arg(0) {
	case "start":
		if err = client.Start(); err == nil {
			fmt.Println("automation started")
		}
	case "stop":
		if err = client.Stop(); err == nil {
			fmt.Println("automation stopped")
		}
	case "status":
		var state string
		var balance float64
		if state, balance, err = client.Status(); err == nil {
			fmt.Printf("state: %s\nbalance: %.2f\n", state, balance)
		}
	case "windows":
		var titles []string
		if titles, err = client.WindowTitles(); err == nil {
			for _, title := range titles {
				fmt.Println(title)
			}
		}
	default:
		usage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "snapbuyctl: %v (is snapbuy running?)\n", err)
		os.Exit(1)
	}
}
