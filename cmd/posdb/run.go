package main

import "github.com/Priyanshu23/posdbgo/runfile"

// openRun opens a sealed run file under the fixed demonstration record
// type shared by every subcommand.
func openRun(path string) (*runfile.Reader[countRecord, uint64], error) {
	return runfile.Open[countRecord, uint64](path, countRecordCodec{}, hashCodec{}, cmpHash)
}
