// Package reconcile implementa el diff de tres vías usado al actualizar colecciones
// anidadas (sub-categorías de una categoría): la lista enviada se compara contra la
// almacenada y se parte en inserciones, actualizaciones y soft-deletes.
package reconcile

// Result agrupa el resultado del diff.
//
//	ToInsert: enviados sin ID (nuevos).
//	ToUpdate: enviados con ID que existe en lo almacenado.
//	ToDelete: IDs almacenados ausentes en el envío.
type Result[T any] struct {
	ToInsert []T
	ToUpdate []T
	ToDelete []string
}

// Lists parte `submitted` contra `existingIDs`. idOf devuelve el ID del elemento
// enviado, o "" si es nuevo. Un elemento enviado con ID que no existe en
// `existingIDs` se trata igualmente como actualización; el repositorio lo ignora
// si la fila no está (mismo comportamiento laxo que el origen de este patrón).
func Lists[T any](submitted []T, existingIDs []string, idOf func(T) string) Result[T] {
	var res Result[T]

	submittedIDs := make(map[string]bool, len(submitted))
	for _, item := range submitted {
		id := idOf(item)
		if id == "" {
			res.ToInsert = append(res.ToInsert, item)
			continue
		}
		submittedIDs[id] = true
		res.ToUpdate = append(res.ToUpdate, item)
	}

	for _, id := range existingIDs {
		if !submittedIDs[id] {
			res.ToDelete = append(res.ToDelete, id)
		}
	}
	return res
}
