package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
	"sync"

	"github.com/gcbaptista/go-ir-engine/model"
)

// DocumentStore owns every document of the corpus, keyed by its sequential id.
type DocumentStore struct {
	Mu     sync.RWMutex
	Docs   map[model.DocumentID]*model.Document
	NextID model.DocumentID
}

// gobDocumentStoreData is a helper struct for Gob encoding/decoding DocumentStore data.
// It excludes the mutex.
type gobDocumentStoreData struct {
	Docs   map[model.DocumentID]*model.Document
	NextID model.DocumentID
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		Docs: make(map[model.DocumentID]*model.Document),
	}
}

// Create allocates the next sequential id and stores an empty document under it.
func (ds *DocumentStore) Create(date, title, text string) *model.Document {
	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	doc := model.NewDocument(ds.NextID)
	doc.Date = date
	doc.Title = title
	doc.Text = text
	ds.Docs[doc.ID] = doc
	ds.NextID++
	return doc
}

// Get returns the document with the given id.
func (ds *DocumentStore) Get(id model.DocumentID) (*model.Document, bool) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	doc, ok := ds.Docs[id]
	return doc, ok
}

// Len returns the number of stored documents.
func (ds *DocumentStore) Len() int {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	return len(ds.Docs)
}

// All returns every document in ascending id order.
func (ds *DocumentStore) All() []*model.Document {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	docs := make([]*model.Document, 0, len(ds.Docs))
	for _, doc := range ds.Docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

// GobEncode implements the gob.GobEncoder interface for DocumentStore.
func (ds *DocumentStore) GobEncode() ([]byte, error) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	dataToEncode := gobDocumentStoreData{
		Docs:   ds.Docs,
		NextID: ds.NextID,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode document store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for DocumentStore.
func (ds *DocumentStore) GobDecode(data []byte) error {
	decodedData := gobDocumentStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode document store data: %w", err)
	}

	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	ds.Docs = decodedData.Docs
	ds.NextID = decodedData.NextID

	// Ensure maps are initialized if they were nil after decoding
	if ds.Docs == nil {
		ds.Docs = make(map[model.DocumentID]*model.Document)
	}
	for id, doc := range ds.Docs {
		// Gob omits zero-valued fields, so document 0 comes back without its id
		doc.ID = id
		doc.EnsureMaps()
	}

	return nil
}
