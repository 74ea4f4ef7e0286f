// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// # IIIF Info Client

// maxInfoSize bounds the info.json body read from the image server.
const maxInfoSize = 1 << 20

// ErrNoDimensions is returned when info.json lacks a positive width or height.
var ErrNoDimensions = errors.New("iiif: width or height not found in info.json")

// InfoClient reads image dimensions from an IIIF image server.
type InfoClient struct {
	http *http.Client
	urls URLBuilder
}

// NewInfoClient returns a client resolving files against urls. The timeout of
// httpClient bounds every lookup.
func NewInfoClient(httpClient *http.Client, urls URLBuilder) *InfoClient {
	return &InfoClient{http: httpClient, urls: urls}
}

// infoDocument is the subset of an IIIF info.json the catalogue needs.
type infoDocument struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

/*
FetchDimensions downloads info.json for file and returns its pixel size.

Parameters:
  - context: context.Context
  - file: string (Path of the image on the IIIF server)

Returns:
  - Dimensions: Width and height in pixels
  - error: Transport failures, non-2xx responses, malformed JSON or [ErrNoDimensions]
*/
func (client *InfoClient) FetchDimensions(context context.Context, file string) (Dimensions, error) {
	url := client.urls.Info(file)

	request, err := http.NewRequestWithContext(context, http.MethodGet, url, nil)
	if err != nil {
		return Dimensions{}, fmt.Errorf("iiif: build request for %s: %w", url, err)
	}
	request.Header.Set("Accept", "application/ld+json, application/json")

	response, err := client.http.Do(request)
	if err != nil {
		return Dimensions{}, fmt.Errorf("iiif: fetch %s: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return Dimensions{}, fmt.Errorf("iiif: fetch %s: unexpected status %d", url, response.StatusCode)
	}

	var document infoDocument
	if err := json.NewDecoder(io.LimitReader(response.Body, maxInfoSize)).Decode(&document); err != nil {
		return Dimensions{}, fmt.Errorf("iiif: decode %s: %w", url, err)
	}

	dimensions := Dimensions{Width: document.Width, Height: document.Height}
	if !dimensions.Valid() {
		return Dimensions{}, ErrNoDimensions
	}

	return dimensions, nil
}
