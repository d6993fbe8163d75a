// Package prompt assembles retrieved chunks into the grounded context block
// and the final answer prompt sent to the generation model.
package prompt
