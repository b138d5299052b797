package dataset

// SampleDataset returns a small bullish dataset used by the render-sample
// operation and by tests.
func SampleDataset() *Dataset {
	d := New()
	d.Rows = []Row{
		{Open: 100, High: 108, Low: 98, Close: 105, Volume: 1000},
		{Open: 105, High: 112, Low: 103, Close: 110, Volume: 1200},
		{Open: 110, High: 115, Low: 107, Close: 108, Volume: 900},
		{Open: 108, High: 110, Low: 105, Close: 112, Volume: 1500},
		{Open: 112, High: 118, Low: 109, Close: 115, Volume: 1100},
	}

	return d
}

// BearishSampleDataset returns a declining dataset for tests.
func BearishSampleDataset() *Dataset {
	d := New()
	d.Rows = []Row{
		{Open: 110, High: 112, Low: 105, Close: 105, Volume: 500},
		{Open: 105, High: 108, Low: 100, Close: 100, Volume: 600},
		{Open: 100, High: 102, Low: 95, Close: 98, Volume: 700},
	}

	return d
}

// FlatSampleDataset returns a dataset whose price range is a single point.
func FlatSampleDataset() *Dataset {
	d := New()
	d.Rows = []Row{
		{Open: 100, High: 100, Low: 100, Close: 100, Volume: 100},
		{Open: 100, High: 100, Low: 100, Close: 100, Volume: 100},
	}

	return d
}
