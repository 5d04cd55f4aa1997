package gstin

import (
	"fmt"
	"strings"
)

// alfabeto del dígito de control: el valor de cada carácter es su posición.
const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Normalize quita espacios y pasa a mayúsculas.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate verifica la estructura del GSTIN (15 caracteres) y su carácter de control (módulo 36).
// Estructura: código de estado (2 dígitos), PAN (5 letras, 4 dígitos, 1 letra),
// número de registro (1 alfanumérico), 'Z' y el carácter de control.
func Validate(gstin string) error {
	g := Normalize(gstin)
	if len(g) != 15 {
		return fmt.Errorf("gstin: debe tener 15 caracteres, se recibieron %d", len(g))
	}
	for i := 0; i < len(g); i++ {
		c := g[i]
		var ok bool
		switch {
		case i < 2, i >= 7 && i < 11:
			ok = isDigit(c)
		case i < 7, i == 11:
			ok = isLetter(c)
		case i == 13:
			ok = c == 'Z'
		default:
			ok = isDigit(c) || isLetter(c)
		}
		if !ok {
			return fmt.Errorf("gstin: carácter %q inválido en la posición %d", c, i+1)
		}
	}
	expected, err := CheckChar(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("gstin: carácter de control inválido: esperado %c, recibido %c", expected, g[14])
	}
	return nil
}

// CheckChar calcula el carácter de control para los 14 primeros caracteres.
// Pesos alternos 1 y 2; cada producto aporta cociente + resto en base 36.
func CheckChar(base string) (byte, error) {
	base = Normalize(base)
	if len(base) < 14 {
		return 0, fmt.Errorf("gstin: se requieren 14 caracteres para el control, se encontraron %d", len(base))
	}
	var sum int
	for i := 0; i < 14; i++ {
		v := strings.IndexByte(charset, base[i])
		if v < 0 {
			return 0, fmt.Errorf("gstin: carácter %q fuera del alfabeto", base[i])
		}
		p := v * (1 + i%2)
		sum += p/36 + p%36
	}
	return charset[(36-sum%36)%36], nil
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }
