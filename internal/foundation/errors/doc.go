// Package errors provides the classified error primitives used across docroles.
//
// A ClassifiedError carries a category, a severity and structured context. It is
// built with a fluent ErrorBuilder and presented to users by the CLIErrorAdapter,
// which maps categories to process exit codes.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryProject, "read project descriptor").
//		Fatal().
//		WithContext("path", descriptorPath).
//		Build()
package errors
