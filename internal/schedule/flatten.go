package schedule

import (
	"sort"

	"github.com/Leganyst/operations-board/internal/model"
)

// ResourceRow — элемент уплощённого списка ресурсов для древовидного
// отображения: сам ресурс и уровень отступа.
type ResourceRow struct {
	Resource model.Resource `json:"resource"`
	Indent   int            `json:"indent"`
}

// FlattenWithUnits разворачивает верхнеуровневые ресурсы вместе с их
// единицами оснащения в один упорядоченный список: родитель с отступом 0,
// сразу за ним его единицы с отступом 1. Порядок групп — порядок resources,
// порядок внутри группы — порядок вставки единиц.
func FlattenWithUnits(resources []model.Resource) []ResourceRow {
	rows := make([]ResourceRow, 0, len(resources))

	for _, res := range resources {
		rows = append(rows, ResourceRow{Resource: res, Indent: 0})
		for _, unit := range res.Units {
			rows = append(rows, ResourceRow{Resource: unit, Indent: 1})
		}
	}

	return rows
}

// GroupByType группирует ресурсы по типу, сохраняя порядок внутри группы.
func GroupByType(resources []model.Resource) map[model.ResourceType][]model.Resource {
	grouped := make(map[model.ResourceType][]model.Resource)
	for _, res := range resources {
		grouped[res.Type] = append(grouped[res.Type], res)
	}
	return grouped
}

// TypeTags возвращает отсортированный список различных типов ресурсов.
func TypeTags(resources []model.Resource) []string {
	seen := make(map[model.ResourceType]struct{})
	var tags []string
	for _, res := range resources {
		if _, ok := seen[res.Type]; ok {
			continue
		}
		seen[res.Type] = struct{}{}
		tags = append(tags, string(res.Type))
	}
	sort.Strings(tags)
	return tags
}
