package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCursor struct {
	docs    []userDocument
	pos     int
	err     error
	closed  bool
	decoded int
}

func (c *fakeCursor) Next(context.Context) bool {
	if c.pos >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *fakeCursor) Decode(v any) error {
	doc, ok := v.(*userDocument)
	if !ok {
		return errors.New("unexpected decode target")
	}
	*doc = c.docs[c.pos-1]
	c.decoded++
	return nil
}

func (c *fakeCursor) Err() error                  { return c.err }
func (c *fakeCursor) Close(context.Context) error { c.closed = true; return nil }

type fakeResult struct {
	doc *userDocument
	err error
}

func (r fakeResult) Decode(v any) error {
	if r.err != nil {
		return r.err
	}
	if r.doc == nil {
		return mongo.ErrNoDocuments
	}
	*v.(*userDocument) = *r.doc
	return nil
}

// fakeCollection keeps documents by _id and records the last find filter.
// lostReplyErr is returned after a write has been applied, as when the
// connection drops before the server's reply arrives.
type fakeCollection struct {
	docs         map[string]userDocument
	cursor       *fakeCursor
	findErrs     []error
	insertErr    error
	replaceErr   error
	lostReplyErr error
	lastFilter   any
	findCalls    int
	insertCalls  int
	deleteCalls  int
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: map[string]userDocument{}}
}

func (f *fakeCollection) InsertOne(_ context.Context, document any, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	doc := document.(userDocument)
	if _, ok := f.docs[doc.ID]; ok {
		return nil, duplicateKey
	}
	f.docs[doc.ID] = doc
	if f.lostReplyErr != nil {
		return nil, f.lostReplyErr
	}
	return &mongo.InsertOneResult{InsertedID: doc.ID}, nil
}

func (f *fakeCollection) Find(_ context.Context, filter any, _ ...*options.FindOptions) (UserCursor, error) {
	f.findCalls++
	f.lastFilter = filter
	if len(f.findErrs) > 0 {
		err := f.findErrs[0]
		f.findErrs = f.findErrs[1:]
		return nil, err
	}
	return f.cursor, nil
}

func idOf(filter any) string {
	for _, e := range filter.(bson.D) {
		if e.Key == fieldID {
			return e.Value.(string)
		}
	}
	return ""
}

func (f *fakeCollection) FindOneAndReplace(_ context.Context, filter any, replacement any, _ ...*options.FindOneAndReplaceOptions) UserSingleResult {
	if f.replaceErr != nil {
		return fakeResult{err: f.replaceErr}
	}
	id := idOf(filter)
	if _, ok := f.docs[id]; !ok {
		return fakeResult{}
	}
	doc := replacement.(userDocument)
	f.docs[id] = doc
	return fakeResult{doc: &doc}
}

func (f *fakeCollection) FindOneAndDelete(_ context.Context, filter any, _ ...*options.FindOneAndDeleteOptions) UserSingleResult {
	f.deleteCalls++
	id := idOf(filter)
	doc, ok := f.docs[id]
	if !ok {
		return fakeResult{}
	}
	delete(f.docs, id)
	if f.lostReplyErr != nil {
		return fakeResult{err: f.lostReplyErr}
	}
	return fakeResult{doc: &doc}
}
