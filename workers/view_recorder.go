package workers

import (
	"log"
	"sync"
)

// ViewWriter é o pedaço do store que o recorder precisa.
type ViewWriter interface {
	CreateProductView(productID string, countryID *string, userID string) error
}

// PendingView é uma impressão aguardando gravação.
type PendingView struct {
	ProductID string
	CountryID *string
	UserID    string
}

// ViewRecorder grava impressões do banner fora do caminho de resposta.
// Record nunca bloqueia nem falha a requisição: fila cheia descarta (com log),
// erro de gravação só loga. Uma vez enfileirada, a gravação roda no contexto
// próprio do worker — abortar a requisição não cancela a escrita.
type ViewRecorder struct {
	views ViewWriter
	queue chan PendingView
	quit  chan struct{}
	wg    sync.WaitGroup
}

// StartViewRecorder sobe o worker. Chame Stop no shutdown pra drenar a fila.
func StartViewRecorder(views ViewWriter) *ViewRecorder {
	r := &ViewRecorder{
		views: views,
		queue: make(chan PendingView, 1024),
		quit:  make(chan struct{}),
	}
	r.wg.Add(1)
	go r.loop()
	return r
}

// Record enfileira sem bloquear. Perder uma view é aceitável; travar a
// renderização do banner não é.
func (r *ViewRecorder) Record(v PendingView) {
	select {
	case r.queue <- v:
	default:
		log.Printf("views worker: queue full, dropping view product=%s", v.ProductID)
	}
}

// Stop sinaliza o shutdown e espera o worker drenar o que já foi enfileirado.
func (r *ViewRecorder) Stop() {
	close(r.quit)
	r.wg.Wait()
}

func (r *ViewRecorder) loop() {
	defer r.wg.Done()
	for {
		select {
		case v := <-r.queue:
			r.write(v)
		case <-r.quit:
			// drena o que sobrou antes de sair
			for {
				select {
				case v := <-r.queue:
					r.write(v)
				default:
					return
				}
			}
		}
	}
}

func (r *ViewRecorder) write(v PendingView) {
	if err := r.views.CreateProductView(v.ProductID, v.CountryID, v.UserID); err != nil {
		log.Printf("views worker: record error product=%s: %v", v.ProductID, err)
	}
}
