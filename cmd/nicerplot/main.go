// Command nicerplot renders NICER data products as plots.
//
// Usage:
//
//	nicerplot domains
//	nicerplot render [flags] <domain> <path>
//
// Examples:
//
//	nicerplot domains
//	nicerplot render spectrum /data/nicer/1050/spectra/ni1050_GTI0.jsgrp --min-count 20
//	nicerplot render lc /data/nicer/1050/ni1050_GTI0.lc.gz --gti 0,1,2 -o lc.html
//	nicerplot render pds /data/nicer/1050/ni1050_GTI0-bin.pds --cut 0.1,100 -f png -o pds.png
//	nicerplot render hid /data/nicer/1050/ni1050_GTI0.lc.gz --gti 0,1 -f echarts -o hid.html
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
