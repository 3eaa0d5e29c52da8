package kpi

// Organize groups results by category, trend and severity. The input order is
// preserved inside every group, so organizing the same results twice gives
// the same dashboard.
func Organize(results []Result) Dashboard {
	d := Dashboard{
		Categories: CategoryGroups{
			Financial: []Result{},
			Schedule:  []Result{},
			Quality:   []Result{},
			Resources: []Result{},
			Risk:      []Result{},
		},
		Trends: TrendGroups{
			Improving: []Result{},
			Declining: []Result{},
			Stable:    []Result{},
		},
		Alerts: AlertGroups{
			Critical: []Result{},
			Warning:  []Result{},
		},
		Unavailable: []string{},
	}

	for _, r := range results {
		d.Summary.Total++
		switch r.Status {
		case StatusExcellent:
			d.Summary.Excellent++
		case StatusGood:
			d.Summary.Good++
		case StatusWarning:
			d.Summary.Warning++
			d.Alerts.Warning = append(d.Alerts.Warning, r)
		case StatusCritical:
			d.Summary.Critical++
			d.Alerts.Critical = append(d.Alerts.Critical, r)
		}

		if group := d.Categories.of(r.Category); group != nil {
			*group = append(*group, r)
		}

		switch r.Trend {
		case TrendUp:
			d.Trends.Improving = append(d.Trends.Improving, r)
		case TrendDown:
			d.Trends.Declining = append(d.Trends.Declining, r)
		default:
			d.Trends.Stable = append(d.Trends.Stable, r)
		}
	}

	return d
}

func (g *CategoryGroups) of(c Category) *[]Result {
	switch c {
	case CategoryFinancial:
		return &g.Financial
	case CategorySchedule:
		return &g.Schedule
	case CategoryQuality:
		return &g.Quality
	case CategoryResources:
		return &g.Resources
	case CategoryRisk:
		return &g.Risk
	}
	return nil
}

// All flattens the category groups in dashboard order.
func (d Dashboard) All() []Result {
	out := make([]Result, 0, d.Summary.Total)
	for _, c := range Categories {
		out = append(out, *d.Categories.of(c)...)
	}
	return out
}
