package storage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Mensajes de bitácora. El texto lo produce la operación que muta; el appender
// solo lo persiste. La redacción de checkout distingue tres casos: retiro total
// en un paso, retiro parcial, y retiro final que agota el remanente.

func boxWord(n int) string {
	if n == 1 {
		return "box"
	}
	return "boxes"
}

func createStorageMessage(name, dimension, capacity string) string {
	return fmt.Sprintf("Created new storage '%s' with dimension '%s' and '%s' capacity.", name, dimension, capacity)
}

func deleteStorageMessage(name string) string {
	return fmt.Sprintf("Deleted storage '%s'.", name)
}

func addBoxMessage(totalBoxes int, productName string, price decimal.Decimal, blockName string) string {
	quantity := "a"
	if totalBoxes > 1 {
		quantity = fmt.Sprintf("a set of %d", totalBoxes)
	}
	return fmt.Sprintf("Added %s '%s' (priced at %s) to block '%s'.", quantity, productName, price.String(), blockName)
}

func deleteBoxMessage(productName, blockName string) string {
	return fmt.Sprintf("Deleted '%s' box in '%s'.", productName, blockName)
}

// checkoutBoxMessage: previouslyCheckedOut son las unidades ya retiradas antes de
// esta operación; closed indica si esta operación agotó el lote.
func checkoutBoxMessage(quantity, previouslyCheckedOut, totalBoxes int, closed bool, productName, blockName string) string {
	switch {
	case closed && previouslyCheckedOut == 0:
		// todo el lote en un solo retiro
		return fmt.Sprintf("Checked out all %d %s of '%s' from '%s' block.",
			totalBoxes, boxWord(totalBoxes), productName, blockName)
	case closed:
		// retiro final después de parciales; el plural sigue al total del lote
		return fmt.Sprintf("Checked out last remaining %d %s of '%s' (%d total) from '%s' block.",
			quantity, boxWord(totalBoxes), productName, totalBoxes, blockName)
	default:
		return fmt.Sprintf("Checked out %d %s of '%s' from '%s' block.",
			quantity, boxWord(quantity), productName, blockName)
	}
}
