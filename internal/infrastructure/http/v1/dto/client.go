package dto

import "factura/internal/domain/clients"

// ClientResponse is one entry of the client catalog.
type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// FromClient creates ClientResponse from a catalog entry.
func FromClient(c clients.Client) ClientResponse {
	return ClientResponse{
		ID:      c.ID,
		Name:    c.Name,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

// FromClients converts the catalog.
func FromClients(catalog []clients.Client) []ClientResponse {
	out := make([]ClientResponse, len(catalog))
	for i, c := range catalog {
		out[i] = FromClient(c)
	}
	return out
}
