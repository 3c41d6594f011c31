// Package appstate holds the process-wide application state: the loaded
// transaction list and the modal editing state. The store is created at
// the composition root, mutated only through its action methods and
// observed through subscriptions.
package appstate

import (
	"sync"

	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"
)

// EventKind identifies which part of the state an event describes.
type EventKind string

const (
	EventTransactionsReplaced EventKind = "transactions_replaced"
	EventTransactionUpserted  EventKind = "transaction_upserted"
	EventTransactionRemoved   EventKind = "transaction_removed"
	EventModalOpened          EventKind = "modal_opened"
	EventModalClosed          EventKind = "modal_closed"
)

// Event is delivered to subscribers after a state mutation. TransactionID
// is set for the single-transaction and modal events.
type Event struct {
	Kind          EventKind
	TransactionID string
}

// Modal describes the create/edit dialog state. EditingID is empty while
// creating.
type Modal struct {
	Open      bool
	EditingID string
}

// Store is the single mutable application state. All mutations go
// through its methods; reads return copies.
type Store struct {
	mu           sync.Mutex
	log          logging.Logger
	transactions []models.Transaction
	modal        Modal
	subscribers  map[int]func(Event)
	nextSub      int
	closed       bool
}

// New creates an empty store.
func New(log logging.Logger) *Store {
	return &Store{
		log:         log,
		subscribers: map[int]func(Event){},
	}
}

// Subscribe registers a listener for state events and returns the
// function that removes it. Listeners are invoked synchronously, outside
// the store lock, in unspecified order.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) publish(event Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	listeners := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

// ReplaceTransactions swaps in a freshly fetched transaction list.
func (s *Store) ReplaceTransactions(transactions []models.Transaction) {
	s.mu.Lock()
	s.transactions = append([]models.Transaction{}, transactions...)
	count := len(s.transactions)
	s.mu.Unlock()

	s.log.Debug("transaction list replaced", logging.F(logging.FieldCount, count))
	s.publish(Event{Kind: EventTransactionsReplaced})
}

// UpsertTransaction inserts or replaces one transaction by ID.
func (s *Store) UpsertTransaction(tx models.Transaction) {
	s.mu.Lock()
	replaced := false
	for i := range s.transactions {
		if s.transactions[i].ID == tx.ID {
			s.transactions[i] = tx
			replaced = true
			break
		}
	}
	if !replaced {
		s.transactions = append(s.transactions, tx)
	}
	s.mu.Unlock()

	s.publish(Event{Kind: EventTransactionUpserted, TransactionID: tx.ID})
}

// RemoveTransaction drops a transaction by ID; unknown IDs are a no-op.
func (s *Store) RemoveTransaction(id string) {
	s.mu.Lock()
	kept := s.transactions[:0]
	removed := false
	for _, tx := range s.transactions {
		if tx.ID == id {
			removed = true
			continue
		}
		kept = append(kept, tx)
	}
	s.transactions = kept
	s.mu.Unlock()

	if removed {
		s.publish(Event{Kind: EventTransactionRemoved, TransactionID: id})
	}
}

// Transactions returns a copy of the current list.
func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction{}, s.transactions...)
}

// TransactionByID looks up one transaction in the current list.
func (s *Store) TransactionByID(id string) (models.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

// OpenCreateModal marks the entry dialog open in create mode.
func (s *Store) OpenCreateModal() {
	s.mu.Lock()
	s.modal = Modal{Open: true}
	s.mu.Unlock()
	s.publish(Event{Kind: EventModalOpened})
}

// OpenEditModal marks the entry dialog open for an existing transaction.
func (s *Store) OpenEditModal(transactionID string) {
	s.mu.Lock()
	s.modal = Modal{Open: true, EditingID: transactionID}
	s.mu.Unlock()
	s.publish(Event{Kind: EventModalOpened, TransactionID: transactionID})
}

// CloseModal resets the dialog state.
func (s *Store) CloseModal() {
	s.mu.Lock()
	id := s.modal.EditingID
	s.modal = Modal{}
	s.mu.Unlock()
	s.publish(Event{Kind: EventModalClosed, TransactionID: id})
}

// ModalState returns the current dialog state.
func (s *Store) ModalState() Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal
}

// Close tears the store down; further events are dropped and all
// subscribers are released.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subscribers = map[int]func(Event){}
}
