/*
Package errors provides the registered root errors of weft and the helpers
to wrap and inspect them.

Every error returned to a client wraps a root error created with Register.
Its code becomes the ABCI code of the response, so a client can recreate
the error with ABCIError and test it with Is:

	if splitter.ErrBelowMinimumCaller.Is(err) {
		// skip this round
	}

The first Wrap of an error records a stack trace. Print it with

	%s   the message
	%v   the message and the place the error was created
	%+v  the full stack trace

Field and AppendField build validation errors that name the failing field,
FieldErrors finds them again.
*/
package errors
