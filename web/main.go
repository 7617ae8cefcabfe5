package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-lensing-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)

	log.Printf("Lensing Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=lensing&format=png", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
