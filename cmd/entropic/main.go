// Command entropic assesses a data file for min-entropy, either locally with the built-in
// estimator suite or by submitting it to a remote collector.
package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"time"

	entropic "github.com/BTBurke/entropic"
	"github.com/BTBurke/entropic/pb"
	"github.com/BTBurke/entropic/pkg/nist"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

type output struct {
	Filename   string           `json:"filename"`
	WordSize   int              `json:"word_size"`
	DataSize   int              `json:"data_size"`
	MinEntropy float64          `json:"min_entropy"`
	Results    []*pb.ModeResult `json:"results"`
}

func main() {
	flags := pflag.NewFlagSet("entropic", pflag.ExitOnError)
	wordSize := flags.Int("word-size", 0, "Significant bits per sample, 0 to auto-detect.")
	iid := flags.Bool("iid", false, "Run the IID confirmatory pipeline.")
	nonIID := flags.Bool("non-iid", false, "Run the ten-estimator Non-IID pipeline.")
	conditioned := flags.Bool("conditioned", false, "The data is conditioned output rather than a raw noise source.")
	verbose := flags.CountP("verbose", "v", "Increase verbosity, repeat for more detail.")
	remote := flags.String("remote", "", "Submit to a collector at host:port instead of assessing locally.")
	noTLS := flags.Bool("no-tls", false, "Disable transport security to the collector.")
	asJSON := flags.Bool("json", false, "Write results as JSON.")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Could not parse flags: %v\n", err)
		os.Exit(1)
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: entropic [flags] <file>\n\nUse entropic --help for options")
		os.Exit(1)
	}
	if !*iid && !*nonIID {
		*nonIID = true
	}

	fname := flags.Arg(0)
	data, err := os.ReadFile(fname)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read %s: %v\n", fname, err)
		os.Exit(1)
	}

	var results []*pb.ModeResult
	switch {
	case *remote != "":
		results, err = assessRemote(*remote, *noTLS, data, *wordSize, *iid, *nonIID, *conditioned, *verbose)
	default:
		results, err = assessLocal(data, *wordSize, *iid, *nonIID, *conditioned, *verbose)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assessment failed: %v\n", err)
		os.Exit(1)
	}

	min := -1.0
	for _, r := range results {
		if min < 0 || r.MinEntropy < min {
			min = r.MinEntropy
		}
	}

	if *asJSON {
		out := output{
			Filename:   fname,
			WordSize:   int(results[0].WordSize),
			DataSize:   len(data),
			MinEntropy: min,
			Results:    results,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Could not write JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for _, r := range results {
		printResult(r)
	}
	fmt.Printf("min(H_assessed) = %f\n", min)
}

func assessLocal(data []byte, wordSize int, iid, nonIID, conditioned bool, verbose int) ([]*pb.ModeResult, error) {
	opts := []entropic.Option{entropic.Verbose(verbose)}
	if conditioned {
		opts = append(opts, entropic.ConditionedOutput())
	}
	a, err := entropic.New(nist.Suite(), opts...)
	if err != nil {
		return nil, err
	}

	var results []*pb.ModeResult
	if iid {
		res, err := a.AssessIID(data, wordSize)
		if err != nil {
			return nil, err
		}
		results = append(results, toPB(res))
	}
	if nonIID {
		res, err := a.AssessNonIID(data, wordSize)
		if err != nil {
			return nil, err
		}
		results = append(results, toPB(res))
	}
	return results, nil
}

func assessRemote(addr string, noTLS bool, data []byte, wordSize int, iid, nonIID, conditioned bool, verbose int) ([]*pb.ModeResult, error) {
	creds := grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{}))
	if noTLS {
		creds = grpc.WithTransportCredentials(insecure.NewCredentials())
	}
	conn, err := grpc.Dial(addr, creds)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := pb.NewEntropyClient(conn)
	resp, err := client.Assess(ctx, &pb.AssessRequest{
		Data:        data,
		WordSize:    uint32(wordSize),
		Iid:         iid,
		NonIid:      nonIID,
		Conditioned: conditioned,
		Verbose:     int32(verbose),
	})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func toPB(r *entropic.Result) *pb.ModeResult {
	out := &pb.ModeResult{
		TestType:   r.TestType.String(),
		MinEntropy: r.MinEntropy,
		HOriginal:  r.HOriginal,
		HBitstring: r.HBitstring,
		HAssessed:  r.HAssessed,
		WordSize:   uint32(r.WordSize),
	}
	for _, e := range r.Estimators {
		out.Estimators = append(out.Estimators, &pb.EstimatorResult{
			Name:            e.Name,
			EntropyEstimate: e.EntropyEstimate,
			Passed:          e.Passed,
			EntropyValid:    e.IsEntropyValid,
		})
	}
	return out
}

func printResult(r *pb.ModeResult) {
	fmt.Printf("%s assessment (word size %d):\n", r.TestType, r.WordSize)
	for _, e := range r.Estimators {
		switch {
		case e.EntropyValid:
			fmt.Printf("  %-45s %f\n", e.Name, e.EntropyEstimate)
		case e.Passed:
			fmt.Printf("  %-45s passed\n", e.Name)
		default:
			fmt.Printf("  %-45s -\n", e.Name)
		}
	}
	fmt.Printf("  H_original  = %f\n", r.HOriginal)
	fmt.Printf("  H_bitstring = %f\n", r.HBitstring)
	fmt.Printf("  H_assessed  = %f\n", r.HAssessed)
}
