package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Garik-/smfcodec/pkg/smf"
)

var (
	inFlag  = flag.String("i", "", "Input rmid file")
	outFlag = flag.String("o", "", "Output midi file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s \n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inFlag == "" || *outFlag == "" {
		flag.Usage()
		return
	}

	raw, err := os.ReadFile(*inFlag)
	if err != nil {
		log.Fatal(err)
	}

	payload, ok := smf.UnwrapRMID(raw)
	if !ok {
		log.Fatalf("%s is not a RIFF/RMID file", *inFlag)
	}

	err = os.WriteFile(*outFlag, payload, os.ModePerm)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %d bytes to %s", len(payload), *outFlag)
}
