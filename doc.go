/*
Package deci implements immutable, exact decimal numbers of arbitrary
precision for financial computation.

# Representation

[Deci] is a struct with two fields:

  - Coefficient: a signed big integer representing the numeric value of the
    decimal without the decimal point.
  - Scale: a non-negative integer indicating the position of the decimal point
    within the coefficient.
    For example, a decimal with a coefficient of 12345 and a scale of 2
    represents the value 123.45.

Decimals are canonical: constructors and arithmetic strip trailing fractional
zeros, so 1.50 and 1.5 have the same coefficient and scale.
The only exception is [Deci.SetScale], which fixes the number of digits
after the decimal point for display.

Special values such as [NaN], [Infinity], or [negative zeros] are not
supported.

# Conversions

The package provides methods for converting decimals:

  - from/to string:
    [Parse], [ParseOrNone], [ParseOrZero], [Deci.String], [Deci.Format].
  - from/to float64:
    [NewFromFloat64], [Deci.Float64].
  - from/to int64:
    [New], [NewFromInt64], [NewFromInt32], [Deci.Int64].
  - from/to big.Int:
    [NewFromBigInt], [Deci.Coef], [Deci.Scale].

Float conversion goes through the shortest decimal text that reads back to
the same float64, so it is lossy and not canonical in any deeper sense.

# Operations

[Deci.Add], [Deci.Sub], [Deci.Mul], [Deci.Pow] and [Sum] are exact: no digit
is ever discarded.
Results grow without bound when operations are chained, callers that need
bounded growth should apply [Deci.SetScale] or [Deci.QuoToScale]
periodically.

Division cannot be exact in general:

  - [Deci.Quo] keeps [DivPrec] (128) significant digits, rounded half to even.
  - [Deci.QuoToScale] rounds the exact quotient once, to the requested number
    of digits after the decimal point, with the requested [RoundingMode].

# Rounding

[RoundingMode] has seven variants:

	| Mode          | 2.5 | 1.6 | 1.1 | -1.1 | -1.6 | -2.5 |
	| ------------- | --- | --- | --- | ---- | ---- | ---- |
	| RoundUp       | 3   | 2   | 2   | -2   | -2   | -3   |
	| RoundDown     | 2   | 1   | 1   | -1   | -1   | -2   |
	| RoundCeiling  | 3   | 2   | 2   | -1   | -1   | -2   |
	| RoundFloor    | 2   | 1   | 1   | -2   | -2   | -3   |
	| RoundHalfUp   | 3   | 2   | 1   | -1   | -2   | -3   |
	| RoundHalfDown | 2   | 2   | 1   | -1   | -2   | -2   |
	| RoundHalfEven | 2   | 2   | 1   | -1   | -2   | -2   |

# Errors

Errors wrap one of two sentinels and can be tested with [errors.Is]:

  - [ErrValidation]: blank or malformed text, a negative scale, a negative
    exponent, or an unknown rounding mode.
  - [ErrArithmetic]: division by zero.

The fail-safe entry points never return these errors.
[ParseOrNone] reports the rejected input to the diagnostic sink, see
[SetDiagnosticSink] and package [github.com/ChiliNoodles/Deci/diag].
[ParseOrZero] and all decoders ([Deci.UnmarshalText], [Deci.UnmarshalJSON],
[Deci.UnmarshalYAML], and the text cases of [Deci.Scan]) substitute [Zero]
for malformed input.

# Engines

Arithmetic is delegated to an engine chosen at build time:

	| Build tag | Engine | Library                        |
	| --------- | ------ | ------------------------------ |
	| (none)    | bigint | math/big                       |
	| deci_apd  | apd    | github.com/cockroachdb/apd/v3  |
	| deci_inf  | inf    | gopkg.in/inf.v0                |

All engines produce identical results; [EngineName] reports the one in use.

[Infinity]: https://en.wikipedia.org/wiki/Infinity#Computing
[NaN]: https://en.wikipedia.org/wiki/NaN
[negative zeros]: https://en.wikipedia.org/wiki/Signed_zero
*/
package deci
