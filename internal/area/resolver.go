package area

import "strings"

type Resolver struct {
	names   map[string]string
	byName  map[string]string
	groups  map[string][]string
	parents map[string][]string
	order   []string
}

// NewResolver строит резолвер поверх неизменяемого справочника областей.
func NewResolver(table Table) *Resolver {
	r := &Resolver{
		names:   make(map[string]string),
		byName:  make(map[string]string),
		groups:  make(map[string][]string),
		parents: make(map[string][]string),
	}

	r.names[AllRegionsID] = AllRegionsName
	r.byName[AllRegionsName] = AllRegionsID

	for _, a := range table.Areas {
		r.register(a.ID, a.Name)
	}

	for _, g := range table.Groups {
		r.register(g.ID, g.Name)
		members := make([]string, 0, len(g.Members))
		for _, member := range g.Members {
			members = append(members, member)
			r.parents[member] = append(r.parents[member], g.ID)
		}
		r.groups[g.ID] = members
	}

	return r
}

func (r *Resolver) register(id, name string) {
	if _, exists := r.names[id]; !exists {
		r.order = append(r.order, id)
	}
	r.names[id] = name
	if name != "" {
		r.byName[name] = id
	}
}

// Canonical приводит идентификатор или отображаемое имя к идентификатору области.
// Неизвестный свободный текст возвращается как есть.
func (r *Resolver) Canonical(input string) string {
	trimmed := strings.TrimSpace(input)
	if _, ok := r.names[trimmed]; ok {
		return trimmed
	}
	if id, ok := r.byName[trimmed]; ok {
		return id
	}
	return trimmed
}

// Name возвращает отображаемое имя области.
func (r *Resolver) Name(id string) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// IsGroup сообщает, является ли идентификатор группой областей.
func (r *Resolver) IsGroup(id string) bool {
	_, ok := r.groups[id]
	return ok
}

// MatchingAreaIDs возвращает идентификатор вместе с участниками группы
// либо с группами, в которые входит область.
func (r *Resolver) MatchingAreaIDs(input string) []string {
	id := r.Canonical(input)
	if id == "" {
		return nil
	}

	if id == AllRegionsID {
		out := make([]string, 0, len(r.order)+1)
		out = append(out, AllRegionsID)
		return append(out, r.order...)
	}

	out := []string{id}
	if members, ok := r.groups[id]; ok {
		out = append(out, members...)
	}
	out = append(out, r.parents[id]...)
	return dedupe(out)
}

// Expand раскрывает смесь групп и областей в список конечных областей без повторов.
func (r *Resolver) Expand(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := r.Canonical(raw)
		if id == "" {
			continue
		}
		if id == AllRegionsID {
			for _, candidate := range r.order {
				if !r.IsGroup(candidate) {
					out = append(out, candidate)
				}
			}
			continue
		}
		if members, ok := r.groups[id]; ok {
			out = append(out, members...)
			continue
		}
		out = append(out, id)
	}
	return dedupe(out)
}

// MatchTags возвращает все значения тегов, совпадение с которыми означает попадание в область:
// идентификаторы, их отображаемые имена для старых записей и маркер всех регионов.
func (r *Resolver) MatchTags(input string) []string {
	ids := r.MatchingAreaIDs(input)
	if len(ids) == 0 {
		return nil
	}

	tags := make([]string, 0, len(ids)*2+2)
	tags = append(tags, AllRegionsID, AllRegionsName)
	tags = append(tags, ids...)
	for _, id := range ids {
		if name, ok := r.names[id]; ok && name != "" {
			tags = append(tags, name)
		}
	}
	return dedupe(tags)
}

// ProfileMatches сообщает, подходит ли набор тегов профиля под искомую область.
func (r *Resolver) ProfileMatches(tags []string, input string) bool {
	for _, tag := range tags {
		if IsAllRegions(tag) {
			return true
		}
	}

	ids := r.MatchingAreaIDs(input)
	if len(ids) == 0 {
		return false
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	for _, tag := range tags {
		if _, ok := set[strings.TrimSpace(tag)]; ok {
			return true
		}
	}

	// legacy records keep free-text display names
	names := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			names[name] = struct{}{}
		}
	}
	for _, tag := range tags {
		if _, ok := names[strings.TrimSpace(tag)]; ok {
			return true
		}
	}

	return false
}

// IsAllRegions сообщает, является ли тег маркером всех регионов.
func IsAllRegions(tag string) bool {
	trimmed := strings.TrimSpace(tag)
	return trimmed == AllRegionsID || trimmed == AllRegionsName
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
