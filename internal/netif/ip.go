// Package netif picks the IPv4 network the nodes live on.
package netif

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ErrInvalidPrefix is returned for a subnet prefix that is not three octets.
var ErrInvalidPrefix = errors.New("invalid subnet prefix")

// ErrNoNetwork is returned when no usable local IPv4 address exists.
var ErrNoNetwork = errors.New("no IPv4 network found")

// Network is a local IPv4 address and the prefix nodes are addressed under.
type Network struct {
	Interface string
	IP        net.IP
	Prefix    string // e.g. "192.168.1."
}

func (n Network) String() string {
	return fmt.Sprintf("%s %s (%s0)", n.Interface, n.IP, n.Prefix)
}

// ParsePrefix normalises a subnet prefix. It accepts "a.b.c", "a.b.c." and
// CIDR notation with a mask of /24 or wider, and returns "a.b.c.".
func ParsePrefix(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		ip, cidrNet, err := net.ParseCIDR(s)
		if err != nil || ip.To4() == nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, s)
		}
		if ones, _ := cidrNet.Mask.Size(); ones < 24 {
			return "", fmt.Errorf("%w: %q needs a /24 or longer mask", ErrInvalidPrefix, s)
		}
		return prefixOf(ip.To4()), nil
	}

	octets := strings.Split(strings.TrimSuffix(s, "."), ".")
	if len(octets) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, s)
	}
	for _, o := range octets {
		v, err := strconv.Atoi(o)
		if err != nil || v < 0 || v > 255 || o == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, s)
		}
	}
	return strings.Join(octets, ".") + ".", nil
}

// Address joins a normalised prefix and a node ID.
func Address(prefix string, id uint8) string {
	return prefix + strconv.Itoa(int(id))
}

func prefixOf(ip net.IP) string {
	return fmt.Sprintf("%d.%d.%d.", ip[0], ip[1], ip[2])
}

// Networks lists the non-loopback IPv4 addresses of the host.
func Networks() ([]Network, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("error getting interfaces: %w", err)
	}

	var out []Network
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}
			out = append(out, Network{Interface: iface.Name, IP: ip, Prefix: prefixOf(ip)})
		}
	}
	return out, nil
}

// DefaultPrefix returns the prefix of the first local network.
func DefaultPrefix() (string, error) {
	nets, err := Networks()
	if err != nil {
		return "", err
	}
	if len(nets) == 0 {
		return "", ErrNoNetwork
	}
	return nets[0].Prefix, nil
}
