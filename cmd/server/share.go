package main

import (
	"log/slog"
	"net/http"

	"github.com/Simplici0/toolcost/internal/share"
)

const qrCodeSize = 256

const noAddressNotice = "No LAN address was found for this machine. Set PUBLIC_HOST to the address other devices should use."

func (s *server) handleShare(w http.ResponseWriter, r *http.Request) {
	link, err := share.Link(s.publicHost, s.port, s.addrs)
	if err != nil {
		slog.Warn("build share link", "error", err)
		s.renderTemplate(w, "share.html", shareViewData{Notice: noAddressNotice})
		return
	}

	s.renderTemplate(w, "share.html", shareViewData{Link: link})
}

func (s *server) handleShareQRCode(w http.ResponseWriter, r *http.Request) {
	link, err := share.Link(s.publicHost, s.port, s.addrs)
	if err != nil {
		http.Error(w, noAddressNotice, http.StatusNotFound)
		return
	}

	png, err := share.QRCodePNG(link, qrCodeSize)
	if err != nil {
		slog.Error("render share QR code", "error", err)
		http.Error(w, "failed to render QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
