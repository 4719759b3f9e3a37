package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dcs-liberation/theater/internal/api"
	"github.com/dcs-liberation/theater/internal/campaign"
	"github.com/dcs-liberation/theater/internal/config"

	"github.com/spf13/pflag"
)

// ErrIncompatibleCampaigns is returned by check-campaigns when any campaign
// cannot be played with this build.
var ErrIncompatibleCampaigns = errors.New("incompatible campaigns found")

// runQuery sends one command to a running server and prints the JSON result.
//
//	theater query nearest_land 15,5 1
func runQuery(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("query", pflag.ContinueOnError)
	configDir := fs.String("config", ".", "directory containing "+config.ConfigFileName)
	server := fs.String("server", "", "server URL, defaults to http://<api.listen>")
	// coordinates such as -281000,647000 must not be read as flags
	fs.SetInterspersed(false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: theater query [--server URL] <command> [args...]")
	}

	loadConfig(*configDir)
	apiCfg := config.GetAPIConfig()
	baseURL := *server
	if baseURL == "" {
		baseURL = "http://" + apiCfg.Listen
	}

	result, err := api.New(baseURL, apiCfg.APIKey).Query(fs.Arg(0), fs.Args()[1:]...)
	if err != nil {
		return err
	}
	return printJSON(out, result)
}

func printJSON(out io.Writer, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runCheckCampaigns lists every campaign of the configured directories with
// its format version and compatibility.
func runCheckCampaigns(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("check-campaigns", pflag.ContinueOnError)
	configDir := fs.String("config", ".", "directory containing "+config.ConfigFileName)
	if err := fs.Parse(args); err != nil {
		return err
	}

	loadConfig(*configDir)
	dirs := config.GetTheaterConfig().CampaignDirs
	if fs.NArg() > 0 {
		dirs = fs.Args()
	}
	return checkCampaigns(out, campaign.LoadEach(Logger, dirs...))
}

func checkCampaigns(out io.Writer, campaigns []*campaign.Campaign) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTHEATER\tVERSION\tSTATUS")

	incompatible := 0
	for _, c := range campaigns {
		status := "ok"
		switch {
		case c.IsOutOfDate():
			status = "out of date"
		case c.IsFromFuture():
			status = "from future"
		}
		if !c.IsCompatible() {
			incompatible++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Theater, c.Version, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if incompatible > 0 {
		return fmt.Errorf("%w: %d of %d", ErrIncompatibleCampaigns, incompatible, len(campaigns))
	}
	return nil
}
