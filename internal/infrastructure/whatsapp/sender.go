// Package whatsapp envia confirmações de pedido por WhatsApp através de um
// gateway HTTP. Sem WHATSAPP_BASE_URL configurado, o construtor devolve um
// NoOp e nada é enviado.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/comanda-api/internal/application/orders"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/pkg/config"
	"github.com/jhoicas/comanda-api/pkg/logger"
)

// NewSender devolve a implementação adequada para a configuração: gateway
// HTTP quando há BaseURL, NoOp caso contrário.
func NewSender(cfg config.NotifyConfig, log *logger.Logger) orders.Notifier {
	if cfg.BaseURL == "" {
		log.Info().Msg("whatsapp não configurado; notificações desativadas")
		return &NoOpSender{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sender{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// NoOpSender descarta todas as notificações.
type NoOpSender struct{}

// NotifyOrderReceived não faz nada.
func (s *NoOpSender) NotifyOrderReceived(ctx context.Context, restaurant *entity.Restaurant, order *entity.Order) error {
	return nil
}

// Sender implementação de orders.Notifier sobre o gateway HTTP.
type Sender struct {
	baseURL string
	token   string
	http    *http.Client
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NotifyOrderReceived envia a confirmação do pedido ao telefone do cliente.
// Pedidos sem telefone (mesa/autoatendimento sem cadastro) são ignorados.
func (s *Sender) NotifyOrderReceived(ctx context.Context, restaurant *entity.Restaurant, order *entity.Order) error {
	if order.CustomerPhone == "" {
		return nil
	}
	payload, err := json.Marshal(sendMessageRequest{
		Phone:   order.CustomerPhone,
		Message: buildMessage(restaurant, order),
	})
	if err != nil {
		return fmt.Errorf("whatsapp: marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("whatsapp: montar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: envio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp: status %d", resp.StatusCode)
	}
	return nil
}

func buildMessage(restaurant *entity.Restaurant, order *entity.Order) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "✅ *%s*: pedido recebido!\n\n", restaurant.Name)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s - R$ %s\n", item.Quantity, item.ProductName, item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: R$ %s", order.Total.StringFixed(2))
	if order.IsDelivery() {
		fmt.Fprintf(&b, "\nTaxa de entrega: R$ %s", order.DeliveryFee.StringFixed(2))
	}
	return b.String()
}
