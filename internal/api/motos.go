package api

import (
	"fmt"
	"net/http"
	"net/url"
)

// Moto is a tracked vehicle record. The server assigns IDs; the yard
// association is by display name, not by key.
type Moto struct {
	ID        int64  `json:"id,omitempty"`
	Modelo    string `json:"modelo"`
	Placa     string `json:"placa"`
	Status    string `json:"status"`
	Descricao string `json:"descricao"`
	NomePatio string `json:"nomePatio"`
}

// MotoFilter holds the filter endpoint's query parameters. Zero-value
// fields are omitted from the query string entirely.
type MotoFilter struct {
	Placa     string
	Modelo    string
	Status    string
	NomePatio string
}

// Values builds the query string, skipping empty parameters.
func (f MotoFilter) Values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("placa", f.Placa)
	set("modelo", f.Modelo)
	set("status", f.Status)
	set("nomePatio", f.NomePatio)
	return q
}

// ListMotos returns every vehicle. Fresh results are cached briefly.
func (c *Client) ListMotos() ([]Moto, error) {
	if cached, ok := c.cache.Get(motosCacheKey); ok {
		return cached.([]Moto), nil
	}

	raw, err := c.do(http.MethodGet, "/motos/todos", nil, nil)
	if err != nil {
		return nil, err
	}
	var motos []Moto
	if err := decodeList(raw, &motos); err != nil {
		return nil, err
	}
	c.cache.SetDefault(motosCacheKey, motos)
	return motos, nil
}

// GetMoto fetches one vehicle, used to populate the edit form. Never cached.
func (c *Client) GetMoto(id int64) (*Moto, error) {
	raw, err := c.do(http.MethodGet, fmt.Sprintf("/motos/id/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeMoto(raw)
}

// CreateMoto registers a new vehicle.
func (c *Client) CreateMoto(payload Moto) (*Moto, error) {
	raw, err := c.do(http.MethodPost, "/motos", nil, payload)
	if err != nil {
		return nil, err
	}
	c.invalidateLists(motosCacheKey)
	return decodeMoto(raw)
}

// UpdateMoto replaces a vehicle record (PUT, full replace semantics).
func (c *Client) UpdateMoto(id int64, payload Moto) (*Moto, error) {
	raw, err := c.do(http.MethodPut, fmt.Sprintf("/motos/id/%d", id), nil, payload)
	if err != nil {
		return nil, err
	}
	c.invalidateLists(motosCacheKey)
	return decodeMoto(raw)
}

// DeleteMoto removes a vehicle.
func (c *Client) DeleteMoto(id int64) error {
	_, err := c.do(http.MethodDelete, fmt.Sprintf("/motos/id/%d", id), nil, nil)
	if err != nil {
		return err
	}
	c.invalidateLists(motosCacheKey)
	return nil
}

// FilterMotos queries vehicles matching the non-empty filter fields. Never
// cached.
func (c *Client) FilterMotos(filter MotoFilter) ([]Moto, error) {
	raw, err := c.do(http.MethodGet, "/motos/filtro", filter.Values(), nil)
	if err != nil {
		return nil, err
	}
	var motos []Moto
	if err := decodeList(raw, &motos); err != nil {
		return nil, err
	}
	return motos, nil
}

func decodeMoto(raw []byte) (*Moto, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var moto Moto
	if err := unmarshalEntity(raw, &moto); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle response: %w", err)
	}
	return &moto, nil
}
