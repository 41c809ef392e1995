package db

import (
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// collectDocs drains a document iterator into decoded models. setID receives
// each decoded value and its document ID. Documents that fail to decode are
// logged and skipped so one bad record cannot poison a whole listing.
func collectDocs[T any](iter *firestore.DocumentIterator, setID func(*T, string)) ([]*T, error) {
	defer iter.Stop()

	var out []*T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate documents: %w", err)
		}
		v := new(T)
		if err := doc.DataTo(v); err != nil {
			log.Printf("Error decoding document %s: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		setID(v, doc.Ref.ID)
		out = append(out, v)
	}
	return out, nil
}

// countDocs counts the documents matched by a query by draining its iterator.
// Acceptable for the collection sizes this system works with; aggregation
// queries would be the next step for large tenants.
func countDocs(iter *firestore.DocumentIterator) (int, error) {
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to iterate documents for counting: %w", err)
		}
		count++
	}
	return count, nil
}
