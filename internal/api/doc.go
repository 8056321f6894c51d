// Package api implements the HTTP client for the MotoVision fleet REST
// backend.
//
// The package has two layers. The request engine (Client.do) builds
// authenticated JSON requests, performs a single network attempt, and
// classifies failures into the two remote error kinds: KindNetwork for
// transport failures before any response, KindAPI for non-2xx responses
// (carrying the status code and decoded body). A missing local session is
// reported as credstore.ErrTokenMissing, propagated unchanged so callers can
// distinguish "no session" from request failures.
//
// On top of the engine sit the typed operation sets for the two entities:
//
//	motos:  ListMotos, GetMoto, CreateMoto, UpdateMoto, DeleteMoto, FilterMotos
//	patios: ListPatios, CreatePatio, UpdatePatio, DeletePatio
//
// These wrappers never swallow errors; translation for display is the
// caller's job.
//
// List endpoints are inconsistent about their envelope (a bare array, or an
// array wrapped in content/data/items), so every list response passes
// through one normalization function before decoding.
//
// Successful list responses for the full moto and patio collections are
// cached for a few seconds; any mutation of an entity invalidates the cached
// lists that depend on it (a patio mutation also invalidates motos, whose
// grouping depends on yard names).
package api
