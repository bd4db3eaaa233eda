// pkg/api/metrics_v1.go
package api

// ConfusionV1 is a binary confusion matrix.
type ConfusionV1 struct {
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TP int `json:"tp"`
}

// ClassificationResultV1 is one evaluated sample.
type ClassificationResultV1 struct {
	YTrue   int     `json:"y_test"`
	Proba   float64 `json:"y_pred_proba"`
	YPred   int     `json:"y_pred"`
	Correct bool    `json:"prediction_is_true"`
}

// ClassificationV1 is the stable schema for a classification report.
type ClassificationV1 struct {
	Loss      float64                  `json:"loss"`
	Accuracy  float64                  `json:"accuracy"`
	Precision float64                  `json:"precision"`
	Recall    float64                  `json:"recall"`
	F1        float64                  `json:"f1"`
	FBeta     float64                  `json:"f_beta"`
	Beta      float64                  `json:"beta"`
	Threshold float64                  `json:"threshold"`
	Confusion ConfusionV1              `json:"confusion"`
	Results   []ClassificationResultV1 `json:"results,omitempty"`
}

// RegressionResultV1 is one evaluated sample.
type RegressionResultV1 struct {
	YTrue float64 `json:"y_test"`
	YPred float64 `json:"y_pred"`
}

// RegressionV1 is the stable schema for a regression report.
type RegressionV1 struct {
	Loss    float64              `json:"loss"`
	MAE     float64              `json:"mae"`
	MSE     float64              `json:"mse"`
	R2      float64              `json:"r2"`
	Results []RegressionResultV1 `json:"results,omitempty"`
}
