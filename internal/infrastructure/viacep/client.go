// Package viacep consulta endereços por CEP na API pública ViaCEP.
// Os resultados são memorizados: CEPs não mudam com frequência e o lookup
// roda no caminho da criação de pedido de entrega.
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/comanda-api/internal/application/orders"
	"github.com/jhoicas/comanda-api/pkg/cache"
	"github.com/jhoicas/comanda-api/pkg/config"
)

var _ orders.AddressLookup = (*Client)(nil)

// Client implementação de orders.AddressLookup sobre a API ViaCEP.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    *cache.TTLCache[string, orders.Address]
	cacheTTL time.Duration
}

// NewClient constrói o cliente com timeout e cache próprios.
func NewClient(cfg config.ViaCEPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: timeout},
		cache:    cache.New[string, orders.Address](0),
		cacheTTL: cacheTTL,
	}
}

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup consulta o endereço de um CEP normalizado (8 dígitos).
func (c *Client) Lookup(ctx context.Context, cep string) (*orders.Address, error) {
	if cached, ok := c.cache.Get(cep); ok {
		return &cached, nil
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep: montar request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep: consulta: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep: status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("viacep: decode: %w", err)
	}
	if body.Erro {
		return nil, fmt.Errorf("viacep: CEP %s não encontrado", cep)
	}

	addr := orders.Address{
		Street:   body.Logradouro,
		District: body.Bairro,
		City:     body.Localidade,
		UF:       body.UF,
	}
	c.cache.Set(cep, addr, c.cacheTTL)
	return &addr, nil
}
