package classifier

// Evaluate scores model on test. Confusion is indexed [actual][predicted].
func Evaluate(model *Model, test FeatureTable) (float64, [2][2]int) {
	var confusion [2][2]int
	if len(test) == 0 {
		return 0, confusion
	}

	correct := 0

	for _, row := range test {
		predicted := model.Predict(row)
		confusion[row.Target][predicted]++

		if predicted == row.Target {
			correct++
		}
	}

	return float64(correct) / float64(len(test)), confusion
}
