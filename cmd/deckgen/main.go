// Command deckgen builds bridge decks, reinforcement and piers from a job
// file and writes them as STL.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.StandardLogger()
	if err := newRootCmd(log).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
