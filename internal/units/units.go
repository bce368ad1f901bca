// Package units converts the Kelvin temperatures reported upstream.
package units

// Celsius converts a Kelvin reading to degrees Celsius.
func Celsius(kelvin float64) float64 {
	return kelvin - 273.15
}

// Fahrenheit converts a Kelvin reading to degrees Fahrenheit.
func Fahrenheit(kelvin float64) float64 {
	return kelvin*9/5 - 459.67
}
