// Package shared holds helpers used across packages that belong to no single
// layer of the reconciler.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger for asserting on structured logs
//   - Sample roster, headcount and standby extracts with a known reconciled result
//   - WriteFile and WriteSampleInputs for laying fixtures out in a temp directory
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    inputs := testutil.WriteSampleInputs(t)
//
//	    // run the code under test with logger and inputs
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
