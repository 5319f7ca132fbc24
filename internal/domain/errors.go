package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound            = errors.New("recurso não encontrado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists  = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("não autorizado")
	ErrForbidden           = errors.New("acesso negado")
	ErrInvalidState        = errors.New("operação inválida para o estado atual")
	ErrQuotaExceeded       = errors.New("cota mensal de pedidos atingida")
	ErrDeliveryUnavailable = errors.New("entrega indisponível para este CEP")
	ErrAlreadyOnPlan       = errors.New("o restaurante já está neste plano ou superior")
	ErrSeatLimitReached    = errors.New("limite de usuários do plano atingido")
	ErrTableLimitReached   = errors.New("limite de mesas do plano atingido")
)

// QuotaExceededError carrega o contador atual e o limite do plano para que o
// cliente consiga montar uma mensagem acionável. errors.Is contra
// ErrQuotaExceeded continua funcionando.
type QuotaExceededError struct {
	Current int
	Limit   int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("cota mensal de pedidos atingida (%d/%d)", e.Current, e.Limit)
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// DuplicateTableNumberError indica colisão de número de mesa dentro do restaurante.
type DuplicateTableNumberError struct {
	Number int
}

func (e *DuplicateTableNumberError) Error() string {
	return fmt.Sprintf("já existe uma mesa com o número %d", e.Number)
}

func (e *DuplicateTableNumberError) Is(target error) bool {
	return target == ErrDuplicate
}
