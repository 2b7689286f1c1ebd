// Package mocks provides centralized mock implementations for testing.
//
// Two styles are available for store.KnownIssueStore:
//
//   - MockKnownIssueStore has a function field per method; unset fields
//     return zero values.
//   - TestifyMockKnownIssueStore is driven by testify/mock expectations.
//
// Usage:
//
//	import "github.com/phrazzld/knownissues-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    mockStore := &mocks.MockKnownIssueStore{
//	        ExistsFn: func(ctx context.Context, id int64) (bool, error) {
//	            return false, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
