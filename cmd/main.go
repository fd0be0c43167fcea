package main

import (
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wlynxg/ipconfig/core/adapter"
	"github.com/wlynxg/ipconfig/core/config"
	"github.com/wlynxg/ipconfig/core/info"
	mlog "github.com/wlynxg/ipconfig/pkgs/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ipconfig:", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	json       bool
	lookup     string
	index      string
	ipv6       bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "ipconfig",
		Short:         "Show the network adapters of this host",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path of the JSON config file")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the snapshot as JSON")
	cmd.Flags().StringVar(&f.lookup, "lookup", "", "only show adapters on-link for this address")
	cmd.Flags().StringVar(&f.index, "index", "", "print the interface index of the named adapter")
	cmd.Flags().BoolVar(&f.ipv6, "ipv6", false, "with --index, print the IPv6 interface index")
	return cmd
}

func run(w io.Writer, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	mlog.SetOutputTypes(cfg.LogConfigs...)
	log := mlog.New("ipconfig")

	adapters, err := adapter.List(append(cfg.Options(), adapter.WithLogger(log))...)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	if f.index != "" {
		idx, ok := adapter.FindInterfaceIndex(adapters, f.index, f.ipv6)
		if !ok {
			return errors.Errorf("no adapter named %q", f.index)
		}
		_, err := fmt.Fprintln(w, idx)
		return err
	}

	if f.lookup != "" {
		addr, err := netip.ParseAddr(f.lookup)
		if err != nil {
			return errors.Wrap(err, "--lookup")
		}
		idx, err := adapter.NewAddressIndex(adapters)
		if err != nil {
			return err
		}
		if adapters, err = idx.Lookup(addr); err != nil {
			return err
		}
	}

	if f.json || cfg.Format == config.FormatJSON {
		return writeJSON(w, adapters)
	}
	return writeText(w, adapters)
}

func writeText(w io.Writer, adapters []adapter.Adapter) error {
	var sb strings.Builder
	for i, a := range adapters {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%s)\n", a.FriendlyName, a.Description)
		fmt.Fprintf(&sb, "  name:     %s\n", a.Name)
		fmt.Fprintf(&sb, "  type:     %s\n", a.Type)
		fmt.Fprintf(&sb, "  status:   %s\n", a.OperStatus)
		fmt.Fprintf(&sb, "  index:    %d (v6 %d)\n", a.IfIndex, a.IPv6IfIndex)
		if len(a.PhysicalAddress) > 0 {
			fmt.Fprintf(&sb, "  mac:      %s\n", a.PhysicalAddress)
		}
		for j, addr := range a.IPAddresses {
			fmt.Fprintf(&sb, "  address:  %s", addr)
			if p := a.Subnets[j]; p.IsValid() {
				fmt.Fprintf(&sb, " on %s", p.Masked())
			}
			sb.WriteString("\n")
		}
		for _, p := range a.Prefixes {
			fmt.Fprintf(&sb, "  prefix:   %s\n", p)
		}
		for _, addr := range a.Gateways {
			fmt.Fprintf(&sb, "  gateway:  %s\n", addr)
		}
		for _, addr := range a.DNSServers {
			fmt.Fprintf(&sb, "  dns:      %s\n", addr)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeJSON(w io.Writer, adapters []adapter.Adapter) error {
	list := make([]map[string]any, 0, len(adapters))
	for _, a := range adapters {
		list = append(list, map[string]any{
			"name":         a.Name,
			"guid":         a.InterfaceGUID.String(),
			"friendlyName": a.FriendlyName,
			"description":  a.Description,
			"dnsSuffix":    a.DNSSuffix,
			"mac":          a.PhysicalAddress.String(),
			"mtu":          a.MTU,
			"type":         a.Type.String(),
			"status":       a.OperStatus.String(),
			"ifIndex":      a.IfIndex,
			"ipv6IfIndex":  a.IPv6IfIndex,
			"luid":         uint64(a.LUID),
			"networkGuid":  a.NetworkGUID.String(),
			"txSpeed":      a.TransmitLinkSpeed,
			"rxSpeed":      a.ReceiveLinkSpeed,
			"ipv4Metric":   a.IPv4Metric,
			"ipv6Metric":   a.IPv6Metric,
			"addresses":    toStrings(a.IPAddresses),
			"subnets":      toStrings(a.Subnets),
			"prefixes":     toStrings(a.Prefixes),
			"gateways":     toStrings(a.Gateways),
			"dnsServers":   toStrings(a.DNSServers),
		})
	}
	doc := map[string]any{
		"host":     info.New(),
		"adapters": list,
	}
	_, err := w.Write(append(gjson.New(doc).MustToJsonIndent(), '\n'))
	return err
}

func toStrings[T fmt.Stringer](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
