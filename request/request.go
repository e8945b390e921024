package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Tamanho máximo do corpo guardado em StatusError
const maxErrorBody = 4 << 10

// Doer executa uma requisição HTTP já montada (*http.Client satisfaz)
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Estrutura que contém as configurações da requisição
type RequestOptions struct {
	Timeout        time.Duration
	Body           io.Reader
	Headers        map[string]string
	Ctx            context.Context
	Client         Doer
	PreRequestHook func(ctx context.Context) error
}

// Tipo de função para aplicar opções à RequestOptions
type RequestOption func(*RequestOptions)

// StatusError é devolvido quando o servidor responde com status fora de 2xx.
// Header e StatusCode ficam expostos para quem precisa reagir ao status
// (por exemplo, ler um cabeçalho de sessão de uma resposta 409).
type StatusError struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, body)
}

// WithTimeout define um tempo limite para a requisição (ignorado com WithClient)
func WithTimeout(timeout time.Duration) RequestOption {
	return func(o *RequestOptions) {
		o.Timeout = timeout
	}
}

// WithBody define um corpo para a requisição
func WithBody(body io.Reader) RequestOption {
	return func(o *RequestOptions) {
		o.Body = body
	}
}

// WithHeader adiciona um cabeçalho à requisição
func WithHeader(key, value string) RequestOption {
	return func(o *RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// Adiciona múltiplos cabeçalhos de uma vez
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithContext permite definir um contexto para a requisição
func WithContext(ctx context.Context) RequestOption {
	return func(o *RequestOptions) {
		o.Ctx = ctx
	}
}

// WithClient reaproveita um cliente HTTP em vez de criar um por chamada
func WithClient(client Doer) RequestOption {
	return func(o *RequestOptions) {
		o.Client = client
	}
}

// Define um hook que será executado antes da requisição
func WithPreRequestHook(hook func(ctx context.Context) error) RequestOption {
	return func(o *RequestOptions) {
		o.PreRequestHook = hook
	}
}

// Do executa a requisição HTTP com opções personalizadas.
//
// Respostas 2xx são devolvidas ao chamador, que fecha o corpo. Qualquer outro
// status vira *StatusError com o corpo já lido e fechado. Erros de rede são
// devolvidos sem alteração.
func Do(method, url string, opts ...RequestOption) (*http.Response, error) {
	// Configuração padrão
	options := &RequestOptions{
		Timeout: 10 * time.Second,
		Ctx:     context.Background(),
	}

	for _, opt := range opts {
		opt(options)
	}

	client := options.Client
	if client == nil {
		client = &http.Client{Timeout: options.Timeout}
	}

	if options.PreRequestHook != nil {
		if err := options.PreRequestHook(options.Ctx); err != nil {
			return nil, errors.Wrap(err, "pre-request hook")
		}
	}

	req, err := http.NewRequestWithContext(options.Ctx, method, url, options.Body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	for k, v := range options.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header.Clone(),
			Body:       body,
		}
	}

	return resp, nil
}
