package navidrome

import (
	"net/http"

	subsonic "github.com/delucks/go-subsonic"
)

const (
	apiVersion = "1.16.1"
	clientName = "music-organizer"
)

// NavidromeClient holds the navidrome client and other required fields
type NavidromeClient struct {
	URL        string
	Username   string
	Password   string
	Client     subsonic.Client
	HTTPClient *http.Client
	Salt       string
	Token      string

	authenticated bool
}

// ScanStatus is the server's view of its library scan
type ScanStatus struct {
	Scanning bool  `json:"scanning"`
	Count    int64 `json:"count"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type scanResponse struct {
	SubsonicResponse struct {
		Status     string      `json:"status"`
		Error      *apiError   `json:"error,omitempty"`
		ScanStatus *ScanStatus `json:"scanStatus,omitempty"`
	} `json:"subsonic-response"`
}
