// Package plantuml serializes relationship models as PlantUML class diagrams
// and hands the text to a PlantUML renderer.
//
// # Serialization
//
// [Serialize] emits one block per class in discovery order, followed by the
// inheritance arrows of that class:
//
//	@startuml
//	abstract class Shape {
//	 {abstract} area
//	}
//
//	class Circle {
//	 radius
//	}
//	Circle --> Shape
//	@enduml
//
// Associations and aggregations are accepted by [FromOptions] but are not
// written; only inheritance edges appear in the text.
//
// # Rendering
//
// A [Renderer] turns PlantUML text into image bytes. Two adapters exist:
//
//   - [Server]: a PlantUML web service, addressed with the compressed text
//     encoding produced by [Encode]
//   - [Local]: the plantuml executable, run in pipe mode
//
// Both are thin: a failure is returned once, as [*errors.CollaboratorError]
// carrying the attempted request and the raw response, and is never retried.
package plantuml
