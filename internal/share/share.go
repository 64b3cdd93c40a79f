// Package share builds a LAN link to the running server and renders it as a QR code
// so a phone on the same network can open the calculator.
package share

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ErrNoAddress is returned when no usable IPv4 address is configured.
var ErrNoAddress = errors.New("no LAN address found")

// AddrsFunc lists the host's interface addresses; net.InterfaceAddrs in production.
type AddrsFunc func() ([]net.Addr, error)

// LANAddress returns the first private, non-loopback IPv4 address, falling back
// to any non-loopback IPv4 address.
func LANAddress(addrs AddrsFunc) (net.IP, error) {
	if addrs == nil {
		addrs = net.InterfaceAddrs
	}

	list, err := addrs()
	if err != nil {
		return nil, fmt.Errorf("list interface addresses: %w", err)
	}

	var fallback net.IP
	for _, a := range list {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		ip = ip.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		if ip.IsPrivate() {
			return ip, nil
		}
		if fallback == nil {
			fallback = ip
		}
	}

	if fallback == nil {
		return nil, ErrNoAddress
	}
	return fallback, nil
}

// Link returns the URL other devices should open. publicHost, when set, wins
// over address detection.
func Link(publicHost, port string, addrs AddrsFunc) (string, error) {
	host := strings.TrimSpace(publicHost)
	if host == "" {
		ip, err := LANAddress(addrs)
		if err != nil {
			return "", err
		}
		host = ip.String()
	}

	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return strings.TrimRight(host, "/") + "/", nil
	}
	if port == "" || port == "80" {
		return "http://" + host + "/", nil
	}
	return "http://" + net.JoinHostPort(host, port) + "/", nil
}

// QRCodePNG encodes content as a PNG QR code of size×size pixels.
func QRCodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
