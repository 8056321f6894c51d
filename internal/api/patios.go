package api

import (
	"fmt"
	"net/http"
)

// Patio is a physical yard that vehicles are grouped under. Vehicles
// reference it by display name, so renaming or deleting a yard can leave
// orphaned references (handled by the orchestration layer).
type Patio struct {
	ID       int64  `json:"id,omitempty"`
	Nome     string `json:"nome"`
	Endereco string `json:"endereco"`
}

// ListPatios returns every yard. Fresh results are cached briefly.
func (c *Client) ListPatios() ([]Patio, error) {
	if cached, ok := c.cache.Get(patiosCacheKey); ok {
		return cached.([]Patio), nil
	}

	raw, err := c.do(http.MethodGet, "/patios", nil, nil)
	if err != nil {
		return nil, err
	}
	var patios []Patio
	if err := decodeList(raw, &patios); err != nil {
		return nil, err
	}
	c.cache.SetDefault(patiosCacheKey, patios)
	return patios, nil
}

// CreatePatio registers a new yard.
func (c *Client) CreatePatio(payload Patio) (*Patio, error) {
	raw, err := c.do(http.MethodPost, "/patios", nil, payload)
	if err != nil {
		return nil, err
	}
	c.invalidateLists(patiosCacheKey, motosCacheKey)
	return decodePatio(raw)
}

// UpdatePatio replaces a yard record.
func (c *Client) UpdatePatio(id int64, payload Patio) (*Patio, error) {
	raw, err := c.do(http.MethodPut, fmt.Sprintf("/patios/%d", id), nil, payload)
	if err != nil {
		return nil, err
	}
	c.invalidateLists(patiosCacheKey, motosCacheKey)
	return decodePatio(raw)
}

// DeletePatio removes a yard. Vehicles referencing it by name are not
// touched.
func (c *Client) DeletePatio(id int64) error {
	_, err := c.do(http.MethodDelete, fmt.Sprintf("/patios/%d", id), nil, nil)
	if err != nil {
		return err
	}
	c.invalidateLists(patiosCacheKey, motosCacheKey)
	return nil
}

func decodePatio(raw []byte) (*Patio, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var patio Patio
	if err := unmarshalEntity(raw, &patio); err != nil {
		return nil, fmt.Errorf("failed to decode yard response: %w", err)
	}
	return &patio, nil
}
